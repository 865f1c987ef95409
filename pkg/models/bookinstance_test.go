package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInstanceStatusUnmarshalJSON(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"maintenance", "on_loan", "available", "reserved"} {
		var status BookInstanceStatus
		err := json.Unmarshal([]byte(`"`+valid+`"`), &status)
		require.NoError(t, err)
		assert.Equal(t, BookInstanceStatus(valid), status)
	}

	for _, invalid := range []string{"Available", "loaned", "", "on loan"} {
		var status BookInstanceStatus
		err := json.Unmarshal([]byte(`"`+invalid+`"`), &status)
		assert.Error(t, err, "expected %q to be rejected", invalid)
	}
}

func TestBookInstanceCanAcquire(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	requester := 7
	other := 8

	tomorrow := today.Add(24 * time.Hour)
	yesterday := today.Add(-24 * time.Hour)
	twoDaysAgo := today.Add(-48 * time.Hour)

	tests := []struct {
		name     string
		instance BookInstance
		want     bool
	}{
		{"available", BookInstance{Status: StatusAvailable}, true},
		{"maintenance", BookInstance{Status: StatusMaintenance}, false},
		{"on loan", BookInstance{Status: StatusOnLoan, BorrowerID: &other, DueBack: &tomorrow}, false},
		{"on loan to requester", BookInstance{Status: StatusOnLoan, BorrowerID: &requester, DueBack: &tomorrow}, false},
		{"reserved by requester", BookInstance{Status: StatusReserved, BorrowerID: &requester, DueBack: &tomorrow}, true},
		{"reserved by other, current", BookInstance{Status: StatusReserved, BorrowerID: &other, DueBack: &tomorrow}, false},
		{"reserved by other, within grace", BookInstance{Status: StatusReserved, BorrowerID: &other, DueBack: &yesterday}, false},
		{"reserved by other, forfeited", BookInstance{Status: StatusReserved, BorrowerID: &other, DueBack: &twoDaysAgo}, true},
		{"reserved without borrower or due date", BookInstance{Status: StatusReserved}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.instance.CanAcquire(requester, today))
		})
	}
}

package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig_Enabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Addrs: []string{"localhost:9092"}}.Enabled())
}

func TestLoanEvent_JSON(t *testing.T) {
	b, err := json.Marshal(LoanEvent{
		Timestamp:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		EventType:    EventRenew,
		LoanID:       "l1",
		BookID:       "b4",
		BorrowerName: "Alice",
		DueDate:      "2024-03-25",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"timestamp":"2024-03-15T10:00:00Z","eventType":"RENEW","loanId":"l1","bookId":"b4",`+
		`"borrowerName":"Alice","dueDate":"2024-03-25"}`, string(b))
}

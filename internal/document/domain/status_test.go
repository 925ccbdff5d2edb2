package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		docType Type
		from    Status
		to      Status
		want    bool
	}{
		{"invoice draft to sent", TypeInvoice, StatusDraft, StatusSent, true},
		{"invoice draft to cancelled", TypeInvoice, StatusDraft, StatusCancelled, true},
		{"invoice draft to paid skips sent", TypeInvoice, StatusDraft, StatusPaid, false},
		{"invoice sent to paid", TypeInvoice, StatusSent, StatusPaid, true},
		{"invoice sent to overdue", TypeInvoice, StatusSent, StatusOverdue, true},
		{"invoice overdue to paid", TypeInvoice, StatusOverdue, StatusPaid, true},
		{"invoice overdue to cancelled", TypeInvoice, StatusOverdue, StatusCancelled, false},
		{"invoice paid is terminal", TypeInvoice, StatusPaid, StatusSent, false},
		{"invoice cancelled is terminal", TypeInvoice, StatusCancelled, StatusDraft, false},
		{"invoice rejects quote status", TypeInvoice, StatusSent, StatusAccepted, false},

		{"quote sent to accepted", TypeQuote, StatusSent, StatusAccepted, true},
		{"quote sent to rejected", TypeQuote, StatusSent, StatusRejected, true},
		{"quote sent to paid is not a thing", TypeQuote, StatusSent, StatusPaid, false},
		{"quote accepted is terminal", TypeQuote, StatusAccepted, StatusSent, false},

		{"delivery note sent to paid", TypeDeliveryNote, StatusSent, StatusPaid, true},
		{"delivery note sent to accepted", TypeDeliveryNote, StatusSent, StatusAccepted, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.docType, tt.from, tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusPaid.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusDraft.Terminal())
	assert.False(t, StatusSent.Terminal())
	assert.False(t, StatusOverdue.Terminal())
}

func TestStatus_Mutable(t *testing.T) {
	assert.True(t, StatusDraft.Mutable())
	for _, s := range []Status{StatusSent, StatusPaid, StatusOverdue, StatusAccepted, StatusRejected, StatusCancelled} {
		assert.False(t, s.Mutable(), "status %s", s)
	}
}

func TestStatusesFor(t *testing.T) {
	assert.Contains(t, StatusesFor(TypeQuote), StatusAccepted)
	assert.NotContains(t, StatusesFor(TypeQuote), StatusPaid)
	assert.Contains(t, StatusesFor(TypeInvoice), StatusOverdue)
	assert.NotContains(t, StatusesFor(TypeDeliveryNote), StatusRejected)
}

package domain

// Status is a document lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// invoice and delivery note share a vocabulary; quotes replace the
// payment states with accepted/rejected.
var transitions = map[Type]map[Status][]Status{
	TypeInvoice: {
		StatusDraft:   {StatusSent, StatusCancelled},
		StatusSent:    {StatusPaid, StatusOverdue, StatusCancelled},
		StatusOverdue: {StatusPaid},
	},
	TypeDeliveryNote: {
		StatusDraft:   {StatusSent, StatusCancelled},
		StatusSent:    {StatusPaid, StatusOverdue, StatusCancelled},
		StatusOverdue: {StatusPaid},
	},
	TypeQuote: {
		StatusDraft: {StatusSent, StatusCancelled},
		StatusSent:  {StatusAccepted, StatusRejected, StatusCancelled},
	},
}

// CanTransition reports whether a document of docType may move from one
// status to another.
func CanTransition(docType Type, from, to Status) bool {
	for _, next := range transitions[docType][from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusPaid, StatusCancelled, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Mutable reports whether financial fields (lines, client, currency,
// number) may still change. Any transition out of draft freezes them.
func (s Status) Mutable() bool {
	return s == StatusDraft
}

// StatusesFor lists the vocabulary of a document type, draft first.
func StatusesFor(docType Type) []Status {
	switch docType {
	case TypeQuote:
		return []Status{StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusCancelled}
	default:
		return []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}
	}
}

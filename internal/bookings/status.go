package bookings

// OfferStatus tracks an offer through its commercial lifecycle. Only
// accepted offers block venue hours.
type OfferStatus string

const (
	OfferDraft    OfferStatus = "DRAFT"
	OfferSent     OfferStatus = "SENT"
	OfferAccepted OfferStatus = "ACCEPTED"
	OfferRejected OfferStatus = "REJECTED"
	OfferExpired  OfferStatus = "EXPIRED"
)

func (s OfferStatus) IsValid() bool {
	switch s {
	case OfferDraft, OfferSent, OfferAccepted, OfferRejected, OfferExpired:
		return true
	}
	return false
}

func (s OfferStatus) String() string {
	return string(s)
}

// ContractStatus tracks a signed contract. Confirmed contracts block venue
// hours.
type ContractStatus string

const (
	ContractConfirmed ContractStatus = "CONFIRMED"
	ContractCancelled ContractStatus = "CANCELLED"
)

func (s ContractStatus) IsValid() bool {
	switch s {
	case ContractConfirmed, ContractCancelled:
		return true
	}
	return false
}

func (s ContractStatus) String() string {
	return string(s)
}

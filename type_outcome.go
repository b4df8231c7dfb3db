package pantry

// Outcome tells what a mutation actually did. Every outcome other than
// Applied means the stores were left untouched.
type Outcome int

const (
	// Applied means the mutation was carried out.
	Applied Outcome = iota
	// NotFound means the list or item does not exist (anymore).
	NotFound
	// AlreadyPurchased means the item's cascade already ran.
	AlreadyPurchased
	// Suppressed means an identical operation was still in flight, or
	// completed within the debounce window, and this call was dropped.
	Suppressed
	// NotPurchased means consumption was refused for an item not bought yet.
	NotPurchased
	// Rejected means the input failed validation.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotFound:
		return "not_found"
	case AlreadyPurchased:
		return "already_purchased"
	case Suppressed:
		return "suppressed"
	case NotPurchased:
		return "not_purchased"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

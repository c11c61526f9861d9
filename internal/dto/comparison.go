package dto

// ComparisonRequest asks for a cost comparison of every subscription variant
// over an import's travel history. From and To bound the transactions that
// are taken into account; when both are omitted the full history is used.
type ComparisonRequest struct {
	Subscription string `json:"subscription" validate:"required,subscription_type"`
	Class        int    `json:"class" validate:"required,fare_class"`
	From         string `json:"from,omitempty" validate:"omitempty,datetime=2006-01-02"`
	To           string `json:"to,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

package storage

type LedgerItemRow struct {
	ID       string
	Type     string
	Amount   float64
	Category string
	Date     string
}

type BillRow struct {
	ID             string
	Name           string
	Amount         float64
	Status         string
	DueDate        string
	RecurrenceRule string
}

type DebtRow struct {
	ID              string
	Creditor        string
	Principal       float64
	MinPayment      float64
	InterestRateApr float64
}

type AssetRow struct {
	ID    string
	Name  string
	Value float64
}

type LiabilityRow struct {
	ID     string
	Name   string
	Amount float64
}

type PayoffPlanRow struct {
	ID        string
	Strategy  string
	Extra     float64
	InputHash string
	PlanJson  string
	CreatedAt string
}

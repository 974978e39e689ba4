package models

// Trip is the resolved travel from the kitchen to the event.
type Trip struct {
	Miles float64 `json:"distance"`
	Hours float64 `json:"duration"`
}

type PriceLineKind string

const (
	LineChefs     PriceLineKind = "chefs"
	LineWaiters   PriceLineKind = "waiters"
	LineEquipment PriceLineKind = "equipment"
	LineTransport PriceLineKind = "transport"
	LineProduct   PriceLineKind = "product"
)

type PriceLine struct {
	Kind   PriceLineKind `json:"kind"`
	Label  string        `json:"label"`
	Amount float64       `json:"amount"`
}

// PriceBreakdown is the itemized cost of a catering booking. Total is always the sum of Lines.
type PriceBreakdown struct {
	Chefs         int         `json:"chefs"`
	Waiters       int         `json:"waiters"`
	ChefRate      float64     `json:"chefRate"`
	WaiterRate    float64     `json:"waiterRate"`
	PerMileRate   float64     `json:"perMileRate"`
	DriverFee     float64     `json:"driverFee"`
	StaffCost     float64     `json:"staffCost"`
	EquipmentFee  float64     `json:"equipmentFee"`
	TransportCost float64     `json:"transportCost"`
	ItemsTotal    float64     `json:"itemsTotal"`
	Lines         []PriceLine `json:"lines"`
	Total         float64     `json:"total"`
	Deposit       float64     `json:"deposit"`
	AmountDue     float64     `json:"amountDue"`
}

package viewmodels

// RedactedEvent is a calendar event as served to callers, after the
// redaction engine has run for the requesting viewer. Masked fields are
// simply absent.
type RedactedEvent struct {
	ID          string            `json:"id"`
	PersonID    string            `json:"personId,omitempty"`
	PersonName  string            `json:"personName,omitempty"`
	PersonEmail string            `json:"personEmail,omitempty"`
	Type        string            `json:"type"`
	Title       string            `json:"title"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	ImpactDays  string            `json:"impactDays,omitempty"`
	ImpactHours string            `json:"impactHours,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Anonymized  bool              `json:"anonymized,omitempty"`
}

type HolidayDay struct {
	Region  string `json:"region"`
	Date    string `json:"date"`
	Name    string `json:"name"`
	HalfDay bool   `json:"halfDay,omitempty"`
}

type CalendarFeed struct {
	Events   []RedactedEvent `json:"events"`
	Holidays []HolidayDay    `json:"holidays"`
}

// BalanceView carries the last-known balance figures plus the freshness
// verdict. Staleness is data here, never an error.
type BalanceView struct {
	PersonID           string `json:"personId"`
	PlanType           string `json:"planType"`
	PeriodStart        string `json:"periodStart"`
	EntitlementDays    string `json:"entitlementDays"`
	UsedDays           string `json:"usedDays"`
	RemainingDays      string `json:"remainingDays"`
	EntitlementHours   string `json:"entitlementHours"`
	UsedHours          string `json:"usedHours"`
	RemainingHours     string `json:"remainingHours"`
	Episodes           int    `json:"episodes,omitempty"`
	RollingWindowDays  int    `json:"rollingWindowDays,omitempty"`
	AlertThresholdDays string `json:"alertThresholdDays,omitempty"`
	LastCalculatedAt   string `json:"lastCalculatedAt"`
	IsStale            bool   `json:"isStale"`
	AlertTriggered     bool   `json:"alertTriggered,omitempty"`
}

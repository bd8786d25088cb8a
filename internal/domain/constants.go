package domain

// Calendar constants
const (
	DaysInWeek   = 7
	MinDayOfWeek = 0 // Sunday
	MaxDayOfWeek = 6 // Saturday
)

// Business validation constants
const (
	MaxNotesLength    = 500
	MaxTotalCapacity  = 1000
	MaxErrorMsgLength = 1000
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DayLabelFormat = "Mon 02/01"  // weekday + DD/MM
)

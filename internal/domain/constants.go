package domain

// Default values
const (
	DefaultServiceDurationMinutes = 30
)

// Business validation constants
const (
	MaxNoteLength       = 1000
	MaxClientNameLength = 200
	MinPhoneDigits      = 8
	MaxPhoneDigits      = 15
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Channel источник создания записи (метка метрик)
const (
	ChannelStaff  = "staff"
	ChannelPublic = "public"
)

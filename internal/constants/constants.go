package constants

const (
	AppName           = "habitforge"
	DefaultConfigPath = "~/.config/habitforge/habitforge.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Habit validation limits
	MaxNameLength = 50
	MinGoalCount  = 1
	MaxGoalCount  = 100

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitforge-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportFilePrefix    = "habitforge_backup_"
	ExportHabitsFile    = "habits.csv"
	ExportCompletionsFile = "completions.csv"
	ExportSettingsFile  = "settings.csv"

	// Streak scan caps: roughly ten years of periods per goal type.
	MaxDailyLookback   = 3650
	MaxWeeklyLookback  = 520
	MaxMonthlyLookback = 120

	// Settings defaults
	DefaultLanguage = "en"
)

// HabitColors is the palette users pick from when creating habits.
var HabitColors = []string{
	"#E57373", // red
	"#FFB74D", // orange
	"#FFF176", // yellow
	"#81C784", // green
	"#4DB6AC", // teal
	"#64B5F6", // blue
	"#9575CD", // purple
	"#F06292", // pink
}

// DefaultHabitColor is used when no color is given on habit creation.
var DefaultHabitColor = HabitColors[3]

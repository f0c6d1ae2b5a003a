package domain

// Time format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	DateLabelFormat = "Mon, Jan 2" // подпись в выпадающем списке дат
)

// Default lead listing values
const (
	DefaultLeadsLimit = 20
	MaxLeadsLimit     = 100
	MaxExportRows     = 10000
)

// Contact validation constants
const (
	MaxNameLength  = 200
	MaxEmailLength = 254
	MaxPhoneLength = 32
)

// LeadSortColumns колонки, по которым разрешена сортировка лидов
var LeadSortColumns = map[string]struct{}{
	"id":            {},
	"created_at":    {},
	"prospect_name": {},
	"email":         {},
	"status":        {},
	"source":        {},
}

// DefaultLeadSort сортировка по умолчанию
const DefaultLeadSort = "created_at"

// FallbackLeadSort сортировка для неизвестной колонки
const FallbackLeadSort = "id"

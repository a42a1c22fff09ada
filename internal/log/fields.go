package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldExpenseID   = "expense_id"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldCount       = "count"
	FieldBackend     = "backend"
	FieldSink        = "sink"
	FieldBucket      = "bucket"
	FieldLogGroup    = "log_group"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentStore   = "store"
	ComponentBackend = "backend"
	ComponentNotify  = "notify"
)

// Operations defines standard operation names
const (
	OpAdd      = "add"
	OpView     = "view"
	OpDelete   = "delete"
	OpSummary  = "summary"
	OpTest     = "test"
	OpLoad     = "load"
	OpSave     = "save"
	OpValidate = "validate"
)

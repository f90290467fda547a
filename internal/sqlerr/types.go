package sqlerr

// Code categorizes Postgres errors into the handful of cases the
// application actually branches on.
type Code int

const (
	// Other covers every SQLSTATE we do not map explicitly.
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	ExclusionViolation
	InvalidTextRepresentation
	SerializationFailure
	DeadlockDetected
	ConnectionFailure
)

// Severity mirrors the Postgres error severity field.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityError
	SeverityFatal
	SeverityPanic
	SeverityWarning
)

// MapCode maps a SQLSTATE string onto our Code enum.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22P02":
		return InvalidTextRepresentation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	case "08000", "08003", "08006":
		return ConnectionFailure
	default:
		return Other
	}
}

// MapSeverity maps a Postgres severity string onto our Severity enum.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityUnknown
	}
}

// Error is our structured view of a Postgres error. It keeps the raw
// driver error around for Unwrap so errors.As still reaches pgconn.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBUnknownDriverError
	DBQueryError

	// Schema errors
	SchemaCreateError

	// Validation errors of common objects
	ValidationNaNError
	ValidationConfidenceError
	ValidationKWeightError
	ValidationTimeUncertaintyError
	ValidationDuplicateEllipseError
	ValidationRestraintError
	ValidationMagnitudeError
	ValidationMeasurementError
	ValidationHypothesisError
	ValidationDetectionError

	// Legacy record errors
	DAOValidationError

	// Conversion errors
	ConvertNullArgumentError
	ConvertAridMismatchError
	ConvertStationMismatchError
	ConvertUnsupportedTypeError
	ConvertMissingDataError
	ConvertUnknownStageError

	// Bridge errors
	BridgeLoadError
	BridgeMetricsError
	BridgeEncodeError
)

package constants

// Specification template data types
const (
	DataTypeText             = "text"
	DataTypeNumber           = "number"
	DataTypeBoolean          = "boolean"
	DataTypeEnum             = "enum"
	DataTypeSocket           = "socket"
	DataTypeMemoryType       = "memory_type"
	DataTypeChipset          = "chipset"
	DataTypePowerConnector   = "power_connector"
	DataTypeFrequency        = "frequency"
	DataTypeMemorySize       = "memory_size"
	DataTypePowerConsumption = "power_consumption"
)

// AllDataTypes lists every supported template data type
var AllDataTypes = []string{
	DataTypeText,
	DataTypeNumber,
	DataTypeBoolean,
	DataTypeEnum,
	DataTypeSocket,
	DataTypeMemoryType,
	DataTypeChipset,
	DataTypePowerConnector,
	DataTypeFrequency,
	DataTypeMemorySize,
	DataTypePowerConsumption,
}

// IsKnownDataType reports whether dataType is a supported template data type
func IsKnownDataType(dataType string) bool {
	for _, dt := range AllDataTypes {
		if dt == dataType {
			return true
		}
	}
	return false
}

// IsNumericDataType reports whether values of dataType normalize to numbers
func IsNumericDataType(dataType string) bool {
	switch dataType {
	case DataTypeNumber, DataTypeFrequency, DataTypeMemorySize, DataTypePowerConsumption:
		return true
	}
	return false
}

// IsEnumDataType reports whether values of dataType normalize to enum members
func IsEnumDataType(dataType string) bool {
	switch dataType {
	case DataTypeEnum, DataTypeSocket, DataTypeMemoryType, DataTypeChipset, DataTypePowerConnector:
		return true
	}
	return false
}

// IsClosedEnumDataType reports whether dataType must be bound to a shared
// enumeration source at template creation time
func IsClosedEnumDataType(dataType string) bool {
	switch dataType {
	case DataTypeSocket, DataTypeMemoryType, DataTypeChipset:
		return true
	}
	return false
}

package logging

const (
	FieldComponent = "component"

	FieldFlags      = "flags"
	FieldFlagNames  = "flagNames"
	FieldFlagCount  = "flagCount"
	FieldOperation  = "op"
	FieldConfigFile = "configFile"
)

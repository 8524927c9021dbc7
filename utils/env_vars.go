package utils

import (
	"fmt"
	"os"
	"strconv"
)

type envVarType interface {
	string | int | bool | float64
}

func parseEnv[T envVarType](envVarName, envValue string) (T, error) {
	var value T
	var err error
	switch ptr := any(&value).(type) {
	case *string:
		*ptr = envValue
	case *int:
		*ptr, err = strconv.Atoi(envValue)
	case *bool:
		*ptr, err = strconv.ParseBool(envValue)
	case *float64:
		*ptr, err = strconv.ParseFloat(envValue, 64)
	}
	if err != nil {
		return value, fmt.Errorf("environment variable %s is not valid: '%s' cannot be converted to %T", envVarName, envValue, value)
	}
	return value, nil
}

// GetEnv returns the parsed environment variable, or the default value if it is unset or empty.
// It panics on a value that does not parse.
func GetEnv[T envVarType](envVarName string, defaultValue T) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		return defaultValue
	}
	value, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		panic(err)
	}
	return value
}

func GetRequiredEnv[T envVarType](envVarName string) T {
	envValue, ok := os.LookupEnv(envVarName)
	if !ok || envValue == "" {
		panic(fmt.Sprintf("%s environment variable is required", envVarName))
	}
	value, err := parseEnv[T](envVarName, envValue)
	if err != nil {
		panic(err)
	}
	return value
}

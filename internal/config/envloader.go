package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
)

// MergeFromEnv overrides fields of cfg from the environment variables named
// by their `env` struct tags. cfg must be a pointer to a struct. Unset and
// empty variables leave the field untouched.
func MergeFromEnv(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("config must be a non-nil struct pointer, got %T", cfg)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		envVar := t.Field(i).Tag.Get("env")
		if envVar == "" || !field.CanSet() {
			continue
		}
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if err := setFieldValue(field, value, t.Field(i).Name, envVar); err != nil {
			return err
		}
	}
	return nil
}

func setFieldValue(field reflect.Value, value, fieldName, envVar string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer for %s (%s): %w", fieldName, envVar, err)
		}
		field.SetInt(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s (%s): %w", fieldName, envVar, err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s for %s (%s)", field.Kind(), fieldName, envVar)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const (
	housenumbersType = "housenumbers"
	nameType         = "name"
)

// PostProcess appends EXTRA_FIELDS to FIELDS and designates the first
// house-number field and the first name field. A field qualifies by its
// type or, failing that, by its key. The designated fields get their type
// set accordingly; later candidates are left untouched.
func (c *Config) PostProcess() {
	c.Fields = append(c.Fields, c.ExtraFields...)

	var haveHousenumbers, haveName bool
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Type == housenumbersType || f.Key == housenumbersType {
			if !haveHousenumbers {
				c.HousenumbersField = f.Key
				f.Type = housenumbersType
				haveHousenumbers = true
			}
		} else if f.Type == nameType || f.Key == nameType {
			if !haveName {
				c.NameField = f.Key
				f.Type = nameType
				haveName = true
			}
		}
	}
}

// Validate checks the typed settings for values no component could use.
func (c *Config) Validate() error {
	validate := validator.New()

	for i, f := range c.Fields {
		if err := validate.Struct(f); err != nil {
			return &SettingError{Key: "FIELDS", Err: fmt.Errorf("%w: field %d: %v", ErrInvalidValue, i, err)}
		}
	}
	for i, f := range c.ExtraFields {
		if err := validate.Struct(f); err != nil {
			return &SettingError{Key: "EXTRA_FIELDS", Err: fmt.Errorf("%w: field %d: %v", ErrInvalidValue, i, err)}
		}
	}
	if err := validate.Struct(c.Storage); err != nil {
		return &SettingError{Key: "STORAGE", Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
	}
	if c.BucketSize <= 0 {
		return &SettingError{Key: "BUCKET_SIZE", Err: fmt.Errorf("%w: must be positive", ErrInvalidValue)}
	}
	return nil
}

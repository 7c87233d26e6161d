package goform

// StringField binds free-form text. A missing value coerces to the empty
// string rather than nil so downstream filters always see a string.
type StringField struct {
	BaseField
}

func (f *StringField) ProcessData(value any) {
	if value == nil || IsUnset(value) {
		f.data = ""
		return
	}
	f.data = value
}

func (f *StringField) ProcessFormdata(values []string) error {
	if len(values) > 0 {
		f.data = values[0]
	} else {
		f.data = ""
	}
	return nil
}

// String declares a text field.
func String(opts ...Option) *UnboundField {
	return newUnbound("string", opts, func(cfg *fieldConfig) (Field, error) {
		return &StringField{}, nil
	})
}

// TextArea declares a multi-line text field. Binding behavior is the
// StringField's; only the type identifier differs.
func TextArea(opts ...Option) *UnboundField {
	return newUnbound("textarea", opts, func(cfg *fieldConfig) (Field, error) {
		return &StringField{}, nil
	})
}

// Password declares a text field whose accepted value is not redisplayed.
func Password(opts ...Option) *UnboundField {
	return newUnbound("password", opts, func(cfg *fieldConfig) (Field, error) {
		return &PasswordField{}, nil
	})
}

// PasswordField is a StringField that never echoes its value back.
type PasswordField struct {
	StringField
}

func (f *PasswordField) Value() string { return "" }

// Hidden declares a string field carried along without user editing.
func Hidden(opts ...Option) *UnboundField {
	return newUnbound("hidden", opts, func(cfg *fieldConfig) (Field, error) {
		return &StringField{}, nil
	})
}

// FileField binds the filename sent with an upload. The library does not
// deal with upload payloads; an integration may replace the value with an
// object representing the uploaded data.
type FileField struct {
	BaseField
}

func (f *FileField) Value() string { return "" }

// File declares a single file upload field.
func File(opts ...Option) *UnboundField {
	return newUnbound("file", opts, func(cfg *fieldConfig) (Field, error) {
		return &FileField{}, nil
	})
}

// MultipleFileField binds every submitted filename as a []string.
type MultipleFileField struct {
	FileField
}

func (f *MultipleFileField) ProcessFormdata(values []string) error {
	f.data = values
	return nil
}

// MultipleFile declares a file upload field accepting several files.
func MultipleFile(opts ...Option) *UnboundField {
	return newUnbound("multiple_file", opts, func(cfg *fieldConfig) (Field, error) {
		return &MultipleFileField{}, nil
	})
}

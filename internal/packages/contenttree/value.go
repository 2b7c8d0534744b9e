package contenttree

import (
	"strconv"
	"strings"
	"time"
)

// PropertyType is the JCR type of a property value.
type PropertyType string

// Supported property types. String is the default and carries no type hint when serialized.
const (
	TypeString        PropertyType = "String"
	TypeBoolean       PropertyType = "Boolean"
	TypeLong          PropertyType = "Long"
	TypeDouble        PropertyType = "Double"
	TypeDecimal       PropertyType = "Decimal"
	TypeDate          PropertyType = "Date"
	TypeName          PropertyType = "Name"
	TypePath          PropertyType = "Path"
	TypeReference     PropertyType = "Reference"
	TypeWeakReference PropertyType = "WeakReference"
	TypeURI           PropertyType = "URI"
)

var knownTypes = map[string]PropertyType{
	string(TypeString):        TypeString,
	string(TypeBoolean):       TypeBoolean,
	string(TypeLong):          TypeLong,
	string(TypeDouble):        TypeDouble,
	string(TypeDecimal):       TypeDecimal,
	string(TypeDate):          TypeDate,
	string(TypeName):          TypeName,
	string(TypePath):          TypePath,
	string(TypeReference):     TypeReference,
	string(TypeWeakReference): TypeWeakReference,
	string(TypeURI):           TypeURI,
}

// LookupType returns the PropertyType with the given name.
func LookupType(name string) (PropertyType, bool) {
	t, ok := knownTypes[name]
	return t, ok
}

// DateLayout is the ISO-8601 layout dates are normalized to.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Value is a typed single or multi valued property.
// Items hold the canonical string encoding of each value.
type Value struct {
	Type  PropertyType
	Multi bool
	Items []string
}

// String returns the first item of a single valued property.
func (v Value) String() string {
	if len(v.Items) == 0 {
		return ""
	}
	return v.Items[0]
}

// Equal reports whether both values have the same type, cardinality and items.
func (v Value) Equal(o Value) bool {
	if v.Type != o.Type || v.Multi != o.Multi || len(v.Items) != len(o.Items) {
		return false
	}
	for i := range v.Items {
		if v.Items[i] != o.Items[i] {
			return false
		}
	}
	return true
}

func StringValue(s string) Value {
	return Value{Type: TypeString, Items: []string{s}}
}

func BoolValue(b bool) Value {
	return Value{Type: TypeBoolean, Items: []string{strconv.FormatBool(b)}}
}

func LongValue(i int64) Value {
	return Value{Type: TypeLong, Items: []string{strconv.FormatInt(i, 10)}}
}

func DoubleValue(f float64) Value {
	return Value{Type: TypeDouble, Items: []string{formatDouble(f)}}
}

func DateValue(t time.Time) Value {
	return Value{Type: TypeDate, Items: []string{t.Format(DateLayout)}}
}

func NameValue(name string) Value {
	return Value{Type: TypeName, Items: []string{name}}
}

// MultiValue returns a multi valued property of the given type.
// Items must already be in canonical form, see NormalizeItem.
func MultiValue(t PropertyType, items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Type: t, Multi: true, Items: items}
}

// NormalizeItem validates a string encoded value against its type and
// returns its canonical form.
func NormalizeItem(t PropertyType, s string) (string, bool) {
	switch t {
	case TypeBoolean:
		b, err := strconv.ParseBool(strings.ToLower(s))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case TypeLong:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return "", false
		}
		return strconv.FormatInt(i, 10), true
	case TypeDouble:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", false
		}
		return formatDouble(f), true
	case TypeDate:
		d, err := parseDate(s)
		if err != nil {
			return "", false
		}
		return d.Format(DateLayout), true
	}
	return s, true
}

func formatDouble(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
		s += ".0"
	}
	return s
}

func parseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}

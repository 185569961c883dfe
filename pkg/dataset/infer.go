package dataset

// ColumnType is the inferred semantic type of a column.
type ColumnType string

const (
	TypeInt    ColumnType = "int"
	TypeFloat  ColumnType = "float"
	TypeBool   ColumnType = "bool"
	TypeDate   ColumnType = "date"
	TypeString ColumnType = "string"
)

// inferThreshold is the majority-vote ratio a candidate type must reach
// among a column's non-null values.
const inferThreshold = 0.9

// InferTypes classifies every column of the dataset.
func InferTypes(d *Dataset) map[string]ColumnType {
	types := make(map[string]ColumnType, d.NumCols())
	for _, name := range d.ColumnNames() {
		cells, _ := d.Cells(name)
		types[name] = InferColumnType(cells)
	}
	return types
}

// InferColumnType classifies a column by majority vote over its non-null
// values. Candidates are tried in order: numeric (int when every coerced
// value is integral, float otherwise), boolean token, date, string.
// All-null columns are string. The function is total: a value failing one
// ratio test simply falls through to the next candidate.
func InferColumnType(cells []Value) ColumnType {
	var nonNull, numeric, boolish, dateish int
	allIntegral := true

	for _, cell := range cells {
		if cell.IsNull() {
			continue
		}
		nonNull++

		// A bare boolean cell is not numeric for inference purposes,
		// even though AsNumber reads it as 0/1.
		if cell.Kind() != KindBool {
			if n, ok := cell.AsNumber(); ok {
				numeric++
				if !Number(n).IsIntegral() {
					allIntegral = false
				}
			}
		}
		if _, ok := cell.AsBool(); ok {
			boolish++
		}
		if _, ok := cell.AsTime(); ok {
			dateish++
		}
	}

	if nonNull == 0 {
		return TypeString
	}
	total := float64(nonNull)
	switch {
	case float64(numeric)/total >= inferThreshold:
		if allIntegral {
			return TypeInt
		}
		return TypeFloat
	case float64(boolish)/total >= inferThreshold:
		return TypeBool
	case float64(dateish)/total >= inferThreshold:
		return TypeDate
	default:
		return TypeString
	}
}

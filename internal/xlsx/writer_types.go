package xlsx

// MaxWriteFileSize is the largest workbook the write commands will open.
const MaxWriteFileSize = 50 * 1024 * 1024 // 50MB

// MaxWriteRangeCells caps how many cells one value or style write may touch.
const MaxWriteRangeCells = 10000

// Value types accepted by WriteValue.
const (
	ValueAuto    = "auto"
	ValueString  = "string"
	ValueNumber  = "number"
	ValueBool    = "bool"
	ValueFormula = "formula"
)

// WriteResult reports a write operation that touched one or more cells.
type WriteResult struct {
	Success bool   `json:"success"`
	File    string `json:"file"`
	Sheet   string `json:"sheet"`
	Target  string `json:"target,omitempty"`
	Applied int    `json:"applied"`
}

package batch

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError is one schema violation in a batch definition.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validation error codes.
const (
	// ErrCodeSchema marks a constraint violation against the batch schema.
	ErrCodeSchema = "E101"
	// ErrCodeStructure marks a definition the schema could not be applied to.
	ErrCodeStructure = "E102"
)

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// schemaSource constrains a decoded batch definition. The Go-side
// Validate() covers the same ground with friendlier messages; the schema
// is the machine-checkable source of truth the validate command reports
// against.
const schemaSource = `
#Run: {
	name:       string & =~"^[A-Za-z0-9._-]+$"
	sites:      int & >0
	taxa:       int & >0
	partitions: int & >0
	timeout?:   string
}

#Definition: {
	runs: [#Run, ...#Run]
}
`

// ValidateSchema unifies the definition with the embedded CUE schema and
// returns every violation found. An empty slice means the definition
// conforms.
func ValidateSchema(def *Definition) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Definition"))
	if err := schema.Err(); err != nil {
		// Schema is a compile-time constant; failure here is a bug.
		return []ValidationError{{Code: ErrCodeStructure, Message: fmt.Sprintf("compile batch schema: %v", err)}}
	}

	value := ctx.Encode(def)
	if err := value.Err(); err != nil {
		return []ValidationError{{Code: ErrCodeStructure, Message: fmt.Sprintf("encode definition: %v", err)}}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var out []ValidationError
		for _, e := range cueerrors.Errors(err) {
			out = append(out, ValidationError{
				Field:   strings.Join(pathStrings(e.Path()), "."),
				Code:    ErrCodeSchema,
				Message: e.Error(),
			})
		}
		return out
	}

	return nil
}

func pathStrings(path []string) []string {
	// CUE reports paths like ["runs", "0", "sites"]; keep them as-is but
	// drop the leading definition name if present.
	if len(path) > 0 && strings.HasPrefix(path[0], "#") {
		return path[1:]
	}
	return path
}

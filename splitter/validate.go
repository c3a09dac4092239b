package splitter

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/oasplit/oaserrors"
	"github.com/erraggy/oasplit/parser"
	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateDocument checks that an emitted document stands on its own.
//
// Every local component reference must resolve inside the document itself.
// OpenAPI 3.0 documents are additionally loaded and validated with
// kin-openapi; later versions stop after the reference check because the
// loader does not understand them. name is used in error messages.
func ValidateDocument(ctx context.Context, name string, data []byte) error {
	pr, err := parser.New().ParseBytes(data)
	if err != nil {
		return &oaserrors.ValidationError{Path: name, Message: "document does not parse", Cause: err}
	}

	defs := indexComponents(pr.Field(parser.KeyComponents), allComponentKinds)
	for _, ref := range sortedRefs(collectRefs(pr.Root, kindSet(allComponentKinds))) {
		if _, ok := defs[ref]; !ok {
			return &oaserrors.ValidationError{
				Path:    name,
				Message: fmt.Sprintf("unresolved reference %s", ref),
				Cause:   &oaserrors.ReferenceError{Ref: ref.String(), Message: "no definition in document"},
			}
		}
	}

	if !strings.HasPrefix(pr.Version, "3.0") {
		return nil
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return &oaserrors.ValidationError{Path: name, Message: "document does not load", Cause: err}
	}
	if err := doc.Validate(ctx); err != nil {
		return &oaserrors.ValidationError{Path: name, Message: "document is not valid OpenAPI", Cause: err}
	}
	return nil
}

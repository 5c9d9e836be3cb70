// Package forms validates and sanitizes visitor submissions before they
// reach the gateway.
package forms

import (
	"errors"
	"html"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/microcosm-cc/bluemonday"

	"github.com/MrSnakeDoc/banho/internal/content"
)

// Submission is a decoded form payload.
type Submission interface {
	// Prepare sanitizes the payload, validates it and builds the entity to
	// persist. partial skips required-field checks, for updates.
	Prepare(partial bool) (content.Entity, error)
}

var (
	// plain-text fields keep no markup at all
	textPolicy = bluemonday.StrictPolicy()
	// rich fields allow the safe subset used for user-generated content
	richPolicy = bluemonday.UGCPolicy()

	supportedLangs = func() []interface{} {
		out := make([]interface{}, len(content.SupportedLangs))
		for i, l := range content.SupportedLangs {
			out[i] = string(l)
		}
		return out
	}()
)

const (
	maxTitle   = 200
	maxName    = 120
	maxText    = 20000
	maxExcerpt = 500
	maxURL     = 500
)

// maxUnescape bounds entity decoding of nested encodings like &amp;lt;.
const maxUnescape = 4

var angleBrackets = strings.NewReplacer("<", "", ">", "")

// cleanText reduces s to plain text. Entities are decoded before the strict
// policy runs so encoded markup is stripped too, and the brackets left in
// the text are dropped.
func cleanText(s string) string {
	for range maxUnescape {
		u := html.UnescapeString(s)
		if u == s {
			break
		}
		s = u
	}
	s = html.UnescapeString(textPolicy.Sanitize(s))
	return strings.TrimSpace(angleBrackets.Replace(s))
}

var errInvalidURL = validation.NewError("invalid_url", "invalid_url")

// imageRef accepts a site-relative path or an absolute http(s) URL.
func imageRef(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		if strings.ContainsAny(s, "<>\"' \t\r\n") {
			return errInvalidURL
		}
		return nil
	}
	if !strings.HasPrefix(s, "https://") && !strings.HasPrefix(s, "http://") {
		return errInvalidURL
	}
	if is.URL.Validate(s) != nil {
		return errInvalidURL
	}
	return nil
}

func cleanRich(s string) string {
	return strings.TrimSpace(richPolicy.Sanitize(s))
}

// required returns the Required rule with a field-specific code, or nothing
// for partial payloads.
func required(partial bool, code string) validation.Rule {
	return validation.When(!partial, validation.Required.Error(code))
}

// asValidationError converts ozzo field errors into a *content.ValidationError.
// Internal rule failures are returned unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make(map[string]string, len(errs))
	for name, ferr := range errs {
		fields[name] = ferr.Error()
	}
	return &content.ValidationError{Fields: fields}
}

// entity builds a submission entity: values go under the submission's
// language and, as a last-resort fallback for other readers, into the
// top-level fields. Empty values are left out so partial updates do not
// blank existing ones.
func entity(lang string, fields content.Translation) content.Entity {
	l := content.NormalizeLang(lang)
	tr := content.Translation{}
	for k, v := range fields {
		if v != "" {
			tr[k] = v
		}
	}
	e := content.Entity{
		Translations: map[content.Lang]content.Translation{},
		Fields:       content.Translation{},
		Attrs:        map[string]any{},
	}
	if len(tr) > 0 {
		e.Translations[l] = tr
		for k, v := range tr {
			e.Fields[k] = v
		}
	}
	return e
}

func setAttr(e *content.Entity, key, val string) {
	if val != "" {
		e.Attrs[key] = val
	}
}

package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Trans translates validation errors. Set by InitTrans.
var Trans ut.Translator

// InitTrans hooks the translator into gin's validator so binding errors
// read "phone is a required field" using json field names.
// Call it once at startup, before the engine serves requests.
func InitTrans(locale string) (err error) {
	// gin creates its validator lazily; make sure there is one to configure
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// report fields by their json name, which is what clients sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// English is both the fallback and the only supported locale
	enT := en.New()
	uni := ut.New(enT, enT)

	Trans, ok = uni.GetTranslator(locale)
	if !ok {
		return fmt.Errorf("uni.GetTranslator(%s) failed", locale)
	}
	return en_translations.RegisterDefaultTranslations(v, Trans)
}

// RemoveTopStruct strips the struct name prefix, "RegisterRequest.phone" -> "phone".
func RemoveTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string, len(fields))
	for field, err := range fields {
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// defaultValidator satisfies binding.StructValidator when gin has none set.
type defaultValidator struct {
	validator *validator.Validate
}

// ValidateStruct runs the binding tags on obj.
func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Struct(obj)
}

// Engine exposes the underlying *validator.Validate for InitTrans.
func (v *defaultValidator) Engine() interface{} {
	return v.validator
}

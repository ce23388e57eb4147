package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validatorsOnce sync.Once

// registerValidators adds the "objectid" tag to gin's validator engine.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
	})
}

// bindStrictJSON is ShouldBindJSON that also rejects fields dst does not declare.
func bindStrictJSON(c *gin.Context, dst any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(dst)
}

// badInput answers 400 with a per-field breakdown when the validator produced one.
func badInput(c *gin.Context, err error) {
	body := gin.H{"error": "missing or invalid fields"}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]string, 0, len(ve))
		for _, fe := range ve {
			details = append(details, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
		}
		body["details"] = details
	} else {
		body["details"] = []string{err.Error()}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

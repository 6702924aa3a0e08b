package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 错误里用 JSON 字段名
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldMessages maps "<json field>.<failed tag>" to the client message.
var fieldMessages = map[string]string{
	"fullName.required":       "Full Name is required",
	"email.required":          "Email is required",
	"password.required":       "Password is required",
	"itemType.required":       "Item Type is required",
	"itemDesc.required":       "Item Description is required",
	"sizeSource.required":     "Size/Source is required",
	"serialNo.required":       "Serial Number is required",
	"deliveryNumber.required": "Delivery number is required",
	"deliveryDate.required":   "Delivery date is required",
	"checkoutNumber.required": "Checkout number is required",
	"checkoutDate.required":   "Checkout date is required",
	"items.required":          "Items are required",
	"items.min":               "Items are required",
	"item.required":           "Item reference is required",
	"quantity.required":       "Quantity must be greater than zero",
	"quantity.gt":             "Quantity must be greater than zero",
	"startDate.required":      "Start and End dates are required",
	"endDate.required":        "Start and End dates are required",
}

func messageFor(fe validator.FieldError) string {
	if fe.Field() == "item" && fe.Tag() == "uuid" {
		return fmt.Sprintf("Invalid item reference: %v", fe.Value())
	}
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// bindAndValidate decodes the JSON body into dst and runs the validate tags.
// On failure it writes the 400 response and returns false. An empty body is
// validated as an empty object.
func bindAndValidate(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fail(c, http.StatusBadRequest, messageFor(verrs[0]))
			return false
		}
		fail(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

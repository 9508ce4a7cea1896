package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"store-rating/internal/api"
	"store-rating/internal/middleware"
)

// ErrorJSON 以 {"error": msg} 回應
func ErrorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, api.ErrorResponse{Error: msg})
}

// ServerError 記錄實際錯誤，對外只回傳 msg
func ServerError(c echo.Context, err error, msg string) error {
	middleware.Logger(c).WithError(err).WithField("path", c.Path()).Error(msg)
	return ErrorJSON(c, http.StatusInternalServerError, msg)
}

// ParamID 解析路徑上的正整數 id
func ParamID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// BindAndValidate 綁定 JSON body 並驗證，失敗時已寫入 400 回應，回傳 false
func BindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, ErrorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return false, ErrorJSON(c, http.StatusBadRequest, ValidationMessage(err))
	}
	return true, nil
}

// ValidationMessage 將 validator 錯誤轉為可讀訊息
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Please enter a valid email"
	case "password_policy":
		return "Password must be 8-16 characters with at least one uppercase letter and one special character"
	case "role":
		return "Invalid role. Must be one of: system_admin, normal_user, store_owner"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

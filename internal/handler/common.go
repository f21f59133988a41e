package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Response 所有端點共用的回應信封，status 1 代表成功、0 代表失敗
type Response struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
	Data    any    `json:"data,omitempty"`
}

func init() {
	// 讓驗證錯誤以 json tag 的欄位名稱回報
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// BindJSON 綁定並驗證請求，失敗時回寫 422/400 並回傳 false。
// 驗證失敗會列出所有不合法的欄位，而不是只有第一個。
func BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusUnprocessableEntity, Response{
			Message: "The given data was invalid.",
			Status:  0,
			Data:    fields,
		})
		return false
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		c.JSON(http.StatusUnprocessableEntity, Response{
			Message: "The given data was invalid.",
			Status:  0,
			Data: map[string]string{
				ute.Field: fmt.Sprintf("The %s field must be of type %s.", fieldLabel(ute.Field), ute.Type.String()),
			},
		})
		return false
	}

	c.JSON(http.StatusBadRequest, Response{
		Message: "Invalid request format.",
		Status:  0,
	})
	return false
}

func validationMessage(fe validator.FieldError) string {
	field := fieldLabel(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s does not match the format %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func fieldLabel(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

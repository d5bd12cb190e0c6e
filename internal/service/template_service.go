// internal/service/template_service.go
package service

import (
	"strings"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// PersonalizationData builds the placeholder set available to template
// authors. Missing name parts render as empty strings rather than visible
// filler, since the output lands in a recipient's inbox.
func PersonalizationData(e *model.Employee, companyName string) map[string]string {
	return map[string]string{
		"first_name": e.FirstName,
		"last_name":  e.LastName,
		"full_name":  e.FullName(),
		"email":      e.Email,
		"company":    companyName,
	}
}

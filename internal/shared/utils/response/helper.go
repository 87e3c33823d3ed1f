package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondJSONWithWarnings is RespondJSON plus non-blocking advisory notices
// (e.g. external calendar conflicts surfaced alongside a successful check).
func RespondJSONWithWarnings(c *gin.Context, status string, code int, message string, data interface{}, warnings interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Warnings:   warnings,
	})
}

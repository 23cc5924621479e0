package cookie

import (
	"github.com/gin-gonic/gin"
)

// StaffTokenCookieName carries the staff bearer token for browser clients of
// the front-desk console.
const StaffTokenCookieName = "staff_token"

func GetStaffToken(c *gin.Context) string {
	token, _ := c.Cookie(StaffTokenCookieName)
	return token
}

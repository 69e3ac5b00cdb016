package api

import (
	"strconv"
	"strings"

	"lotobank/domain/entities"

	"github.com/gin-gonic/gin"
)

// requestActor reads the authenticated caller from the identity headers set
// by the gateway. Authentication itself happens upstream; this service only
// authorizes.
func requestActor(c *gin.Context) (entities.Actor, bool) {
	id, err := strconv.ParseInt(c.GetHeader("X-User-Id"), 10, 64)
	if err != nil {
		return entities.Actor{}, false
	}

	role := entities.Role(c.GetHeader("X-User-Role"))
	switch role {
	case entities.RoleAdmin, entities.RoleBanker, entities.RoleSeller:
	default:
		return entities.Actor{}, false
	}

	return entities.Actor{ID: id, Role: role}, true
}

// requestLanguage picks the response language from Accept-Language. Only the
// primary subtag matters; the translator falls back for anything unknown.
func requestLanguage(c *gin.Context) string {
	lang := c.GetHeader("Accept-Language")
	if lang == "" {
		return ""
	}
	lang = strings.TrimSpace(strings.Split(lang, ",")[0])
	if i := strings.IndexAny(lang, "-;"); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}

// pathID parses a numeric path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

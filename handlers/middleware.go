package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	tenantContextKey        = "tenant_id"
	platformAdminContextKey = "platform_admin"

	headerTenantID      = "X-Tenant-ID"
	headerPlatformAdmin = "X-Platform-Admin"
	headerAdminToken    = "X-Admin-Token"
)

// TenantMiddleware resolves the tenant scope for every API request.
//
// Regular requests must carry a valid X-Tenant-ID header. A platform admin
// may instead send X-Platform-Admin: true with the shared admin token; such
// requests run without a tenant scope and see all tenants.
func TenantMiddleware() gin.HandlerFunc {
	adminToken := os.Getenv("ADMIN_API_TOKEN")

	return func(c *gin.Context) {
		if c.GetHeader(headerPlatformAdmin) == "true" {
			if adminToken == "" || c.GetHeader(headerAdminToken) != adminToken {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "FORBIDDEN",
						"message": "Invalid platform admin token",
					},
				})
				return
			}

			c.Set(platformAdminContextKey, true)

			// Admins may still pin a tenant to act within it
			if raw := c.GetHeader(headerTenantID); raw != "" {
				tenantID, err := uuid.Parse(raw)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
						"success": false,
						"error": gin.H{
							"code":    "INVALID_TENANT",
							"message": "Invalid X-Tenant-ID format",
						},
					})
					return
				}
				c.Set(tenantContextKey, tenantID)
			}

			c.Next()
			return
		}

		raw := c.GetHeader(headerTenantID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_TENANT",
					"message": "X-Tenant-ID header is required",
				},
			})
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TENANT",
					"message": "Invalid X-Tenant-ID format",
				},
			})
			return
		}

		c.Set(tenantContextKey, tenantID)
		c.Next()
	}
}

// tenantID returns the tenant bound to the request. ok is false only for
// platform-admin requests that did not pin a tenant.
func tenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(tenantContextKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}

// tenantScope returns the tenant filter for list queries: nil means the
// request is a platform-admin request spanning all tenants.
func tenantScope(c *gin.Context) *uuid.UUID {
	id, ok := tenantID(c)
	if !ok {
		return nil
	}
	return &id
}

// isPlatformAdmin reports whether the request authenticated as platform admin
func isPlatformAdmin(c *gin.Context) bool {
	return c.GetBool(platformAdminContextKey)
}

// requireTenant resolves the tenant or writes a 400. Operations that create
// or mutate data always need a concrete tenant, even for admins.
func requireTenant(c *gin.Context) (uuid.UUID, bool) {
	id, ok := tenantID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_TENANT",
				"message": "This operation requires an X-Tenant-ID header",
			},
		})
		return uuid.Nil, false
	}
	return id, true
}

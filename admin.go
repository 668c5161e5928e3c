// admin.go - privacy-conscious visitor tracking and the admin area
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Visitor records older than this are removed.
const visitorRetention = 365 * 24 * time.Hour

type admin struct {
	store       *Store
	username    string
	password    string
	token       string
	hashingSalt string

	// track runs visitor inserts; the server uses a goroutine per request.
	track func(func())
}

func newAdmin(store *Store, username, password string) *admin {
	a := &admin{
		store:       store,
		username:    username,
		password:    password,
		token:       generateAdminToken(),
		hashingSalt: generateAdminToken(), // Use for IP hashing
		track:       func(fn func()) { go fn() },
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP)
func (a *admin) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.hashingSalt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

// Middleware to check admin authentication
func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Privacy-conscious visitor tracking middleware
func (a *admin) trackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip tracking for assets, streams, APIs and admin pages
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") ||
			strings.HasPrefix(path, "/images/") ||
			strings.HasPrefix(path, "/stats/") ||
			strings.HasPrefix(path, "/api/") ||
			strings.HasPrefix(path, "/admin") ||
			strings.HasPrefix(path, "/favicon") ||
			strings.HasPrefix(path, "/privacy") {
			c.Next()
			return
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := a.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		now := time.Now()
		a.track(func() {
			if err := a.store.RecordVisit(hashedIP, userAgent, path, now); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		})
		c.Next()
	}
}

// Cleanup old visitor data for privacy compliance
func (a *admin) cleanupOldVisitorData() {
	rowsDeleted, err := a.store.CleanupVisitors(visitorRetention, time.Now())
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

// Setup all admin routes
func (a *admin) setupRoutes(r *gin.Engine) {
	// Privacy policy route
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Privacy Policy",
		})
	})

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
		if userOK && passOK {
			// Set secure cookie (24 hours)
			c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", a.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Printf("Failed admin login attempt from %s", a.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", a.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(a.authMiddleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(time.Now())
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"title": "Dashboard",
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/messages", func(c *gin.Context) {
		messages, err := a.store.Messages()
		if err != nil {
			log.Printf("Error loading messages: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load messages",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-messages.html", gin.H{
			"title":    "Messages",
			"messages": messages,
		})
	})

	adminGroup.DELETE("/messages/:id", func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		found, err := a.store.DeleteMessage(id)
		if err != nil {
			log.Printf("Error deleting message %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}

		log.Printf("Message %d deleted by admin from %s", id, a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(200)
		if err != nil {
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":    "Visitors",
			"visitors": visitors,
		})
	})

	// Privacy compliance endpoint
	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		go a.cleanupOldVisitorData()
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	// Admin statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		log.Printf("Admin stats exported by %s", a.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}

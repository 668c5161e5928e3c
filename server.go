package main

import (
	"io"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/gifty-speed/counter"
)

type server struct {
	site  *Site
	store *Store
	loop  *counter.Loop
	admin *admin
}

func newRouter(s *server) *gin.Engine {
	r := gin.Default()
	r.LoadHTMLGlob("templates/*")

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.admin.trackingMiddleware())

	r.GET("/", s.home)
	r.GET("/about", s.about)
	r.GET("/blog", s.blog)
	r.GET("/contact", s.contact)

	// HTMX contact form submission
	r.POST("/contact", s.submitContact)

	// Animated counters, opened by the page once the element is in view
	r.GET("/stats/:slug/stream", s.streamStat)
	r.GET("/api/stats", s.listStats)

	s.admin.setupRoutes(r)
	return r
}

// page builds the template data shared by every page: navigation, the
// floating social menu and the owner profile.
func (s *server) page(c *gin.Context, title string, data gin.H) gin.H {
	path := c.Request.URL.Path
	type navLink struct {
		NavItem
		Current bool
	}
	nav := make([]navLink, 0, len(s.site.Nav))
	for _, item := range s.site.Nav {
		nav = append(nav, navLink{NavItem: item, Current: item.Active(path)})
	}

	h := gin.H{
		"title":  title,
		"owner":  s.site.Owner,
		"nav":    nav,
		"social": s.site.Social,
	}
	for k, v := range data {
		h[k] = v
	}
	return h
}

func (s *server) home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(c, "Home", gin.H{
		"stats": s.site.HeroStats,
	}))
}

func (s *server) about(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", s.page(c, "About", gin.H{
		"achievements": s.site.Achievements,
		"story":        s.site.Story,
		"skills":       s.site.Skills,
		"philosophy":   s.site.Philosophy,
		"garage":       s.site.Garage,
	}))
}

func (s *server) blog(c *gin.Context) {
	category := c.DefaultQuery("category", "All")
	featured, hasFeatured := s.site.FeaturedPost()

	c.HTML(http.StatusOK, "blog.html", s.page(c, "Blog", gin.H{
		"categories":  append([]string{"All"}, s.site.Categories...),
		"category":    category,
		"featured":    featured,
		"hasFeatured": hasFeatured,
		"posts":       s.site.PostsIn(category),
	}))
}

func (s *server) contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", s.page(c, "Contact", gin.H{
		"contactInfo": s.site.ContactInfo,
	}))
}

func (s *server) submitContact(c *gin.Context) {
	msg := Message{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Body:    strings.TrimSpace(c.PostForm("message")),
	}

	if problem := validateMessage(msg); problem != "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": problem,
		})
		return
	}

	if err := s.store.SaveMessage(&msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	log.Printf("Contact message %d stored from %s", msg.ID, s.admin.hashIP(c.ClientIP()))
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Message sent successfully! I'll get back to you soon.",
	})
}

// validateMessage returns a user-facing problem description, or "" when msg
// can be stored.
func validateMessage(msg Message) string {
	switch {
	case msg.Name == "":
		return "Please tell me your name."
	case msg.Email == "":
		return "Please include an email address so I can reply."
	case msg.Body == "":
		return "Your message is empty."
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return "That email address doesn't look right."
	}
	return ""
}

// streamStat animates one stat over Server-Sent Events. Intermediate values
// arrive as "frame" events and may be skipped when the client falls behind;
// the exact final value always arrives as a single "settled" event. A client
// that disconnects tears the counter down.
func (s *server) streamStat(c *gin.Context) {
	stat, ok := s.site.Stat(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown stat"})
		return
	}

	frames := make(chan string, 16)
	ctr := counter.New(stat.Value, s.loop,
		counter.WithDuration(stat.Duration()),
		counter.WithPrefix(stat.Prefix),
		counter.WithSuffix(stat.Suffix),
		counter.WithDecimals(stat.Decimals),
		counter.WithRender(func(text string) {
			select {
			case frames <- text:
			default:
			}
		}),
	)
	ctr.Mount()
	defer ctr.Unmount()

	// The page only opens the stream once the counter has been on screen.
	ctr.SetVisible(true)

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case text := <-frames:
			c.SSEvent("frame", text)
			return true
		case <-ctr.Done():
			c.SSEvent("settled", ctr.Text())
			return false
		case <-ctx.Done():
			return false
		}
	})
}

type statView struct {
	Stat
	Display string `json:"text"`
}

func (s *server) listStats(c *gin.Context) {
	views := make([]statView, 0, len(s.site.HeroStats)+len(s.site.Achievements))
	for _, st := range s.site.HeroStats {
		views = append(views, statView{Stat: st, Display: st.Text()})
	}
	for _, st := range s.site.Achievements {
		views = append(views, statView{Stat: st, Display: st.Text()})
	}
	c.JSON(http.StatusOK, gin.H{"stats": views})
}

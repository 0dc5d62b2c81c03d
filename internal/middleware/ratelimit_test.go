package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FlynntKnapp/planit-mini/internal/core/authz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// --- Test Suite ---
type NonStaffRateLimitTestSuite struct {
	suite.Suite
	router *gin.Engine
}

// newQuotaRouter builds a router with the non-staff throttle configured for
// the given quota. setPrincipal injects the request principal the way the
// auth middleware would; a nil setPrincipal leaves the request anonymous.
func (suite *NonStaffRateLimitTestSuite) newQuotaRouter(quota int64, setPrincipal func(c *gin.Context)) {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	if setPrincipal != nil {
		suite.router.Use(func(c *gin.Context) {
			setPrincipal(c)
			c.Next()
		})
	}

	rate := limiter.Rate{Period: time.Hour, Limit: quota}
	suite.router.Use(NonStaffRateLimit(limiter.New(memory.NewStore(), rate)))
	suite.router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}

func principalSetter(p authz.Principal) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.Set(string(principalKey), p)
	}
}

func (suite *NonStaffRateLimitTestSuite) get() int {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "203.0.113.7:52012"
	suite.router.ServeHTTP(w, req)
	return w.Code
}

func (suite *NonStaffRateLimitTestSuite) TestStaffIsExempt() {
	staff := authz.Principal{UserID: uuid.NewString(), Authenticated: true, IsStaff: true}
	suite.newQuotaRouter(2, principalSetter(staff))

	for i := 0; i < 5; i++ {
		suite.Equal(http.StatusOK, suite.get())
	}
}

func (suite *NonStaffRateLimitTestSuite) TestNonStaffQuotaExhausts() {
	member := authz.Principal{UserID: uuid.NewString(), Authenticated: true}
	suite.newQuotaRouter(2, principalSetter(member))

	suite.Equal(http.StatusOK, suite.get())
	suite.Equal(http.StatusOK, suite.get())
	suite.Equal(http.StatusTooManyRequests, suite.get())
}

func (suite *NonStaffRateLimitTestSuite) TestQuotaIsKeyedByUser() {
	// One store, two principals: exhausting the first user's quota must not
	// consume the second user's.
	rate := limiter.Rate{Period: time.Hour, Limit: 1}
	store := limiter.New(memory.NewStore(), rate)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		c.Set(string(principalKey), authz.Principal{UserID: c.GetHeader("X-Test-User"), Authenticated: true})
		c.Next()
	})
	suite.router.Use(NonStaffRateLimit(store))
	suite.router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	getAs := func(userID string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Test-User", userID)
		suite.router.ServeHTTP(w, req)
		return w.Code
	}

	userA := uuid.NewString()
	userB := uuid.NewString()
	suite.Equal(http.StatusOK, getAs(userA))
	suite.Equal(http.StatusTooManyRequests, getAs(userA))
	suite.Equal(http.StatusOK, getAs(userB))
}

func (suite *NonStaffRateLimitTestSuite) TestAnonymousFallsBackToClientIP() {
	suite.newQuotaRouter(1, nil)

	suite.Equal(http.StatusOK, suite.get())
	suite.Equal(http.StatusTooManyRequests, suite.get())
}

func TestNonStaffRateLimitTestSuite(t *testing.T) {
	suite.Run(t, new(NonStaffRateLimitTestSuite))
}

// RateLimit guards the credential endpoints and counts strictly by client IP,
// staff or not.
func TestRateLimitKeyedByClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	rate := limiter.Rate{Period: time.Minute, Limit: 1}
	router.Use(RateLimit(limiter.New(memory.NewStore(), rate)))
	router.POST("/login", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	getFrom := func(addr string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := getFrom("203.0.113.7:52012"); code != http.StatusOK {
		t.Fatalf("first request: got %d, want %d", code, http.StatusOK)
	}
	if code := getFrom("203.0.113.7:52013"); code != http.StatusTooManyRequests {
		t.Fatalf("second request from same IP: got %d, want %d", code, http.StatusTooManyRequests)
	}
	if code := getFrom("198.51.100.4:40000"); code != http.StatusOK {
		t.Fatalf("request from other IP: got %d, want %d", code, http.StatusOK)
	}
}

package core

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RouterDeps bundles everything the HTTP surface needs, passed into the
// constructor explicitly rather than reached for via globals.
type RouterDeps struct {
	Supervisor *Supervisor
	Config     Config
	Metrics    *MetricsService
	StartedAt  time.Time
}

// NewRouter builds the gin engine exposing the core's two public operations
// (validate_syntax, run_suite) plus ambient status/health endpoints. It is a
// thin presenter over the execution core, not part of it.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/status", func(c *gin.Context) {
		status, err := CollectSystemStatus(c.Request.Context(), deps.Metrics, deps.StartedAt, deps.Config.MemoryHintMB)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "status_unavailable", err.Error())
			return
		}
		c.JSON(http.StatusOK, status)
	})

	r.POST("/validate", func(c *gin.Context) {
		var body struct {
			Source string `json:"source"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		if fault := ValidateSyntax(body.Source); fault != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "line": fault.Line, "message": fault.Message})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true})
	})

	r.POST("/run-suite", func(c *gin.Context) {
		var body runSuiteRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		entryPoint := body.EntryPoint
		if entryPoint == "" {
			entryPoint = ResolveEntryPoint(body.Signature)
		}
		deadline := body.DeadlineMs
		if deadline == 0 {
			deadline = deps.Config.DeadlineMs
		}
		cases := make([]TestCase, len(body.Cases))
		for i, tc := range body.Cases {
			input := make(map[string]DynamicValue, len(tc.Input))
			for k, v := range tc.Input {
				input[k] = fromYAML(v)
			}
			cases[i] = TestCase{Input: input, Expected: fromYAML(tc.Expected), Description: tc.Description}
		}
		verdict := RunSuite(body.Source, cases, entryPoint, deadline, deps.Supervisor)
		c.JSON(http.StatusOK, toJSONVerdict(verdict))
	})

	return r
}

type runSuiteRequest struct {
	Source     string `json:"source"`
	Signature  string `json:"signature"`
	EntryPoint string `json:"entry_point"`
	DeadlineMs int    `json:"deadline_ms"`
	Cases      []struct {
		Description string                 `json:"description"`
		Input       map[string]interface{} `json:"input"`
		Expected    interface{}            `json:"expected"`
	} `json:"cases"`
}

// respondError sends the unified error payload {"error": {"code", "message"}}.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

func toJSONVerdict(v SuiteVerdict) gin.H {
	results := make([]gin.H, len(v.TestResults))
	for i, r := range v.TestResults {
		entry := gin.H{
			"passed":        r.Passed,
			"elapsed_ms":    r.ElapsedMs,
			"error_message": r.ErrorMessage,
		}
		if r.HasActual {
			entry["actual"] = Repr(r.Actual)
		}
		results[i] = entry
	}
	out := gin.H{
		"success":          v.Success,
		"test_results":     results,
		"total_elapsed_ms": v.TotalElapsedMs,
	}
	if v.Fatal != nil {
		out["error"] = v.Fatal.Error()
	}
	return out
}

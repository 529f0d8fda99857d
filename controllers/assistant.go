package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"fitflow/middleware"

	"github.com/gin-gonic/gin"
)

const assistantTimeout = 30 * time.Second

// @Summary Ask the fitness assistant a question
// @Description Proxies the prompt to the configured text-completion API and
// @Description returns the generated answer. Requires ASSISTANT_API_URL (and
// @Description optionally ASSISTANT_API_KEY) to be set.
// @Tags assistant
// @Accept json
// @Produce json
// @Success 200 {object} object{answer=string}
// @Failure 400 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /auth/ask [post]
// @Security ApiKeyAuth
func AskAssistant() gin.HandlerFunc {
	httpClient := &http.Client{Timeout: assistantTimeout}
	return func(c *gin.Context) {
		if _, err := middleware.JWT_decoder(c); err != nil {
			return
		}

		apiURL := os.Getenv("ASSISTANT_API_URL")
		if apiURL == "" {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
			return
		}

		var req struct {
			Question string `json:"question"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing question"})
			return
		}

		body, err := json.Marshal(gin.H{
			"prompt": "You are a fitness coach. Answer briefly and practically.\n\n" + req.Question,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build request"})
			return
		}

		upstream, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, apiURL, bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build request"})
			return
		}
		upstream.Header.Set("Content-Type", "application/json")
		if key := os.Getenv("ASSISTANT_API_KEY"); key != "" {
			upstream.Header.Set("Authorization", "Bearer "+key)
		}

		resp, err := httpClient.Do(upstream)
		if err != nil {
			log.Printf("[ASSISTANT-ERROR] Error calling completion API: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is unavailable"})
			return
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil || resp.StatusCode != http.StatusOK {
			log.Printf("[ASSISTANT-ERROR] Completion API returned status %d", resp.StatusCode)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is unavailable"})
			return
		}

		var parsed struct {
			Answer string `json:"answer"`
			Text   string `json:"text"`
		}
		if err := json.Unmarshal(raw, &parsed); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant returned an unexpected response"})
			return
		}
		answer := parsed.Answer
		if answer == "" {
			answer = parsed.Text
		}

		c.JSON(http.StatusOK, gin.H{"answer": answer})
	}
}

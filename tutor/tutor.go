// Package tutor provides the LLM-backed practice tutor client. It speaks the
// OpenAI-compatible chat completions protocol so any conforming endpoint,
// hosted or local, can serve as the backend.
package tutor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/auth"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/network"
)

// systemPrompt frames every conversation. The tutor must stay on topic and
// answer at a learner's level.
const systemPrompt = "You are a friendly sign language tutor. " +
	"Answer questions about sign language vocabulary, grammar and etiquette " +
	"concisely, in plain language suitable for a beginner. " +
	"When asked about a specific sign, describe the handshape, movement and placement."

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest defines the JSON request structure for the completions endpoint.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// chatResponse defines the anticipated JSON response structure.
type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Enabled reports whether the tutor is configured and turned on.
func Enabled() bool {
	return viper.GetBool(key.TutorEnable)
}

// Chat sends the conversation to the configured endpoint and returns the
// assistant's reply. The system prompt is prepended on every call so the
// stored history stays prompt-free.
func Chat(history []Message) (string, error) {
	messages := append([]Message{{Role: "system", Content: systemPrompt}}, history...)

	body := chatRequest{
		Model:    viper.GetString(key.TutorModel),
		Messages: messages,
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error(err)
		return "", err
	}

	endpoint := viper.GetString(key.TutorEndpoint)
	log.Infof("Sending chat request to tutor endpoint %s", endpoint)

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error(err)
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")

	// Local endpoints commonly run without a key; only attach one if stored.
	if token, err := auth.GetToken(); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := network.Client.Do(req)
	if err != nil {
		log.Error(err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("tutor endpoint returned status code " + strconv.Itoa(resp.StatusCode))
		return "", fmt.Errorf("invalid response code %d", resp.StatusCode)
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Error(err)
		return "", err
	}

	if response.Error != nil {
		return "", fmt.Errorf("tutor: %s", response.Error.Message)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("tutor returned no choices")
	}

	return response.Choices[0].Message.Content, nil
}

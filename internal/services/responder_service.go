package services

import (
	"math/rand"
	"strings"
	"time"
)

// DefaultModelName tags bot messages with the generator version that
// produced them.
const DefaultModelName = "simple-chatbot-v1.0"

// Responder generates a reply for a user message. Implementations must be
// pure apart from their random source: no persistence access, no other side
// effects.
type Responder interface {
	GenerateResponse(userMessage string) string
	ModelName() string
}

var greetingKeywords = []string{"hello", "hi", "hey", "good morning", "good afternoon"}

var greetingResponses = []string{
	"Hello! How can I help you today?",
	"Hi there! What's on your mind?",
	"Hey! Great to see you. What can I do for you?",
	"Hello! I'm here to chat. What would you like to talk about?",
}

var questionResponses = []string{
	"That's an interesting question! Let me think about that...",
	"Hmm, I'm not sure about that specific question, but I'd love to help you explore it further.",
	"Great question! While I might not have the exact answer, I'm happy to discuss it with you.",
}

var negativeKeywords = []string{"sad", "upset", "angry", "frustrated"}

var positiveKeywords = []string{"happy", "excited", "great", "awesome", "wonderful"}

var helpKeywords = []string{"help", "assist", "support"}

var gratitudeKeywords = []string{"thank", "thanks"}

var farewellKeywords = []string{"bye", "goodbye", "see you", "talk later"}

var farewellResponses = []string{
	"Goodbye! It was great chatting with you. Have a wonderful day!",
	"See you later! Feel free to come back anytime you want to chat.",
	"Take care! I enjoyed our conversation. Come back soon!",
}

var defaultResponses = []string{
	"That's interesting! Tell me more about that.",
	"I see what you mean. What made you think about that?",
	"Thanks for sharing that with me! How do you feel about it?",
	"That sounds intriguing. Can you elaborate a bit more?",
	"I appreciate you telling me that. What's your perspective on it?",
	"Interesting point! I'd love to hear more of your thoughts on this.",
}

// ResponderService is the rule-based reply generator. Categories are tested
// in a fixed order and the first match wins; categories with several
// candidate replies pick one uniformly from the injected random source.
type ResponderService struct {
	modelName string
	rng       *rand.Rand
}

// NewResponderService creates a ResponderService. A nil rng gets a
// time-seeded source; tests inject a fixed seed to pin the selection.
func NewResponderService(rng *rand.Rand) *ResponderService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &ResponderService{
		modelName: DefaultModelName,
		rng:       rng,
	}
}

// ModelName returns the generator version tag.
func (s *ResponderService) ModelName() string {
	return s.modelName
}

// GenerateResponse maps a user message to a reply via ordered keyword
// matching on the trimmed, lower-cased input. Empty input falls through to
// the default category.
func (s *ResponderService) GenerateResponse(userMessage string) string {
	message := strings.ToLower(strings.TrimSpace(userMessage))

	if containsAny(message, greetingKeywords) {
		return s.pick(greetingResponses)
	}

	if strings.HasSuffix(message, "?") {
		switch {
		case strings.Contains(message, "how are you"):
			return "I'm doing great, thank you for asking! How are you doing today?"
		case strings.Contains(message, "what") && strings.Contains(message, "name"):
			return "I'm your friendly chatbot assistant! You can call me ChatBot. What's your name?"
		case strings.Contains(message, "weather"):
			return "I don't have access to real-time weather data, but I hope it's nice where you are! Is there anything else I can help you with?"
		case strings.Contains(message, "time"):
			return "I don't have access to the current time, but you can check your device's clock. Is there something else I can assist you with?"
		default:
			return s.pick(questionResponses)
		}
	}

	if containsAny(message, negativeKeywords) {
		return "I'm sorry to hear you're feeling that way. Sometimes it helps to talk about what's bothering you. I'm here to listen."
	}

	if containsAny(message, positiveKeywords) {
		return "That's wonderful to hear! I'm glad you're feeling positive. What's making you so happy?"
	}

	if containsAny(message, helpKeywords) {
		return "I'm here to help! I can chat with you about various topics, answer questions, or just have a friendly conversation. What would you like to talk about?"
	}

	if containsAny(message, gratitudeKeywords) {
		return "You're very welcome! I'm happy I could help. Is there anything else you'd like to chat about?"
	}

	if containsAny(message, farewellKeywords) {
		return s.pick(farewellResponses)
	}

	return s.pick(defaultResponses)
}

func (s *ResponderService) pick(responses []string) string {
	return responses[s.rng.Intn(len(responses))]
}

func containsAny(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

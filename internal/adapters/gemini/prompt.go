package gemini

import "fmt"

// analysisPrompt embeds the user input into a fixed instruction with a
// strict output schema. The model is asked for bare JSON, but responses are
// still tolerated when wrapped in prose or code fences (see extract.go).
const analysisPrompt = `You are a music mood analyzer. Analyze the following user input and convert it into structured music characteristics.

User Input: %q

Generate a JSON response with the following structure:
{
  "mood": "calm | energetic | melancholy | happy | romantic | focused | relaxed | intense",
  "genres": ["genre1", "genre2"],
  "target_energy": 0.0-1.0,
  "target_valence": 0.0-1.0,
  "target_tempo": 60-180,
  "target_danceability": 0.0-1.0,
  "keywords": ["keyword1", "keyword2"],
  "playlist_name": "Creative playlist name",
  "description": "Playlist description in Korean"
}

Guidelines:
- mood: Overall emotional tone (choose one that best fits)
- genres: 1-3 seed genres (e.g., "lo-fi", "jazz", "acoustic", "electronic", "indie", "k-pop", "rock")
- target_energy: 0.0 (calm/relaxed) to 1.0 (energetic/intense)
- target_valence: 0.0 (sad/melancholic) to 1.0 (happy/cheerful)
- target_tempo: Beats per minute (60=slow, 120=moderate, 180=fast)
- target_danceability: 0.0 (not danceable) to 1.0 (very danceable)
- keywords: Extract 2-5 key concepts from user input
- playlist_name: Creative, memorable name reflecting the mood (in Korean or English)
- description: Short description of when/where to listen (in Korean)

Return ONLY valid JSON, no additional text.`

func buildAnalysisPrompt(userInput string) string {
	return fmt.Sprintf(analysisPrompt, userInput)
}

package handlers

import "net/http"

// SwaggerDoc отдаёт OpenAPI-описание API. Документ поддерживается
// вручную и покрывает поверхности, которыми пользуется шлюз.
func SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(swaggerJSON))
}

const swaggerJSON = `{
  "swagger": "2.0",
  "info": {
    "title": "Brawl Stars Tournament Bot API",
    "description": "HTTP API consumed by the chat gateway: tournaments, brackets, player stats and schedules.",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {
      "get": {"summary": "Health check", "responses": {"200": {"description": "OK"}}}
    },
    "/auth/token": {
      "post": {
        "summary": "Exchange the gateway key for a player-scoped JWT",
        "parameters": [{"name": "body", "in": "body", "schema": {"$ref": "#/definitions/TokenInput"}}],
        "responses": {"200": {"description": "Token issued"}, "401": {"description": "Bad gateway key"}}
      }
    },
    "/players/{id}": {
      "get": {
        "summary": "Player profile with rank and win rate",
        "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
        "responses": {"200": {"description": "Profile"}, "404": {"description": "Unknown player"}}
      }
    },
    "/players/{id}/trophies": {
      "post": {"summary": "Set trophies (self or moderator+)", "responses": {"200": {"description": "Updated"}}}
    },
    "/players/{id}/clan": {
      "post": {"summary": "Set clan (self or moderator+)", "responses": {"200": {"description": "Updated"}}}
    },
    "/players/{id}/role": {
      "post": {"summary": "Grant role (owner only)", "responses": {"200": {"description": "Updated"}}}
    },
    "/leaderboard/{category}": {
      "get": {
        "summary": "Top 10 by trophies, xp, wins or participations",
        "parameters": [{"name": "category", "in": "path", "type": "string", "required": true}],
        "responses": {"200": {"description": "Leaderboard"}}
      }
    },
    "/stats": {
      "get": {"summary": "Bot totals", "responses": {"200": {"description": "Totals"}}}
    },
    "/chats/{chatID}/tournaments": {
      "post": {"summary": "Create a tournament for the chat (admin+)", "responses": {"201": {"description": "Created"}, "409": {"description": "Chat already has a tournament"}}}
    },
    "/chats/{chatID}/tournaments/current": {
      "get": {"summary": "Current tournament state, roster and start readiness", "responses": {"200": {"description": "State"}, "404": {"description": "No tournament"}}}
    },
    "/chats/{chatID}/tournaments/current/join": {
      "post": {"summary": "Join the roster during registration", "responses": {"200": {"description": "Joined"}, "409": {"description": "Already joined"}}}
    },
    "/chats/{chatID}/tournaments/current/leave": {
      "post": {"summary": "Leave the roster during registration", "responses": {"200": {"description": "Left"}}}
    },
    "/chats/{chatID}/tournaments/current/start": {
      "post": {"summary": "Start the tournament (creator only)", "responses": {"200": {"description": "Started"}, "400": {"description": "Conditions not met"}}}
    },
    "/chats/{chatID}/tournaments/current/bracket": {
      "get": {"summary": "All rounds with the active round scores", "responses": {"200": {"description": "Bracket"}}}
    },
    "/chats/{chatID}/tournaments/current/matches": {
      "get": {"summary": "Active round matches and series scores", "responses": {"200": {"description": "Matches"}}}
    },
    "/chats/{chatID}/tournaments/current/matches/{matchID}/winner": {
      "post": {"summary": "Record one game win for a side (moderator+)", "responses": {"200": {"description": "Recorded"}, "409": {"description": "Match already decided"}}}
    },
    "/chats/{chatID}/schedules": {
      "post": {"summary": "Schedule a tournament poll (admin+)", "responses": {"201": {"description": "Scheduled"}}}
    },
    "/chats/{chatID}/schedules/{id}/vote": {
      "post": {"summary": "Vote on a participation poll", "responses": {"200": {"description": "Vote counted"}}}
    },
    "/ws": {
      "get": {"summary": "WebSocket subscription to a chat room (?chat_id=N)", "responses": {"101": {"description": "Switching protocols"}}}
    }
  },
  "definitions": {
    "TokenInput": {
      "type": "object",
      "properties": {
        "gateway_key": {"type": "string"},
        "player_id": {"type": "integer", "format": "int64"},
        "username": {"type": "string"},
        "first_name": {"type": "string"}
      }
    }
  }
}`

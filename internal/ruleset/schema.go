package ruleset

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const ruleSetSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "spelling", "grammar", "calculation", "classification", "quality", "strategy"],
  "definitions": {
    "patternRule": {
      "type": "object",
      "required": ["pattern", "correction"],
      "properties": {
        "pattern": { "type": "string", "minLength": 1 },
        "correction": { "type": "string", "minLength": 1 }
      }
    },
    "words": {
      "type": ["array", "null"],
      "items": { "type": "string", "minLength": 1 }
    }
  },
  "properties": {
    "name": { "type": "string", "minLength": 1 },
    "spelling": { "type": ["array", "null"], "items": { "$ref": "#/definitions/patternRule" } },
    "grammar": { "type": ["array", "null"], "items": { "$ref": "#/definitions/patternRule" } },
    "calculation": {
      "type": "object",
      "required": ["pattern", "tolerance"],
      "properties": {
        "pattern": { "type": "string", "minLength": 1 },
        "tolerance": { "type": "number", "minimum": 0 }
      }
    },
    "classification": {
      "type": "object",
      "required": ["fallback", "categories"],
      "properties": {
        "fallback": { "type": "string", "minLength": 1 },
        "categories": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["type", "keywords"],
            "properties": {
              "type": { "type": "string", "minLength": 1 },
              "keywords": { "type": "array", "minItems": 1, "items": { "type": "string", "minLength": 1 } }
            }
          }
        }
      }
    },
    "quality": {
      "type": "object",
      "required": ["reviewer", "sections"],
      "properties": {
        "reviewer": { "type": "string", "minLength": 1 },
        "financial_keywords": { "$ref": "#/definitions/words" },
        "timeline_keywords": { "$ref": "#/definitions/words" },
        "professional_words": { "$ref": "#/definitions/words" },
        "informal_words": { "$ref": "#/definitions/words" },
        "sections": { "type": "array", "minItems": 1, "items": { "type": "string", "minLength": 1 } }
      }
    },
    "strategy": {
      "type": "object",
      "required": ["strength_factors", "roi", "percentage", "duration"],
      "properties": {
        "strength_factors": {
          "type": "array",
          "minItems": 1,
          "items": {
            "type": "object",
            "required": ["name", "pattern"],
            "properties": {
              "name": { "type": "string", "minLength": 1 },
              "pattern": { "type": "string", "minLength": 1 }
            }
          }
        },
        "roi": {
          "type": "object",
          "required": ["figures", "ratio", "keyword"],
          "properties": {
            "figures": { "type": "string", "minLength": 1 },
            "ratio": { "type": "string", "minLength": 1 },
            "keyword": { "type": "string", "minLength": 1 }
          }
        },
        "percentage": { "type": "string", "minLength": 1 },
        "duration": { "type": "string", "minLength": 1 },
        "value_words": { "$ref": "#/definitions/words" },
        "credibility_words": { "$ref": "#/definitions/words" },
        "urgency_words": { "$ref": "#/definitions/words" },
        "differentiators": { "$ref": "#/definitions/words" },
        "competitive_advantages": { "$ref": "#/definitions/words" },
        "market_positioning": { "type": "string" },
        "social_proof_words": { "$ref": "#/definitions/words" },
        "triggers": {
          "type": "object",
          "properties": {
            "urgency": { "$ref": "#/definitions/words" },
            "fear": { "$ref": "#/definitions/words" },
            "gain": { "$ref": "#/definitions/words" }
          }
        }
      }
    }
  }
}`

var ruleSetSchemaLoader = gojsonschema.NewStringLoader(ruleSetSchemaJSON)

// Validate checks the rule set's shape against the rule set schema. It does
// not compile patterns; see Compile.
func (rs *RuleSet) Validate() error {
	res, err := gojsonschema.Validate(ruleSetSchemaLoader, gojsonschema.NewGoLoader(rs))
	if err != nil {
		return fmt.Errorf("rule set schema validation failed: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid rule set: %s", strings.Join(msgs, "; "))
}

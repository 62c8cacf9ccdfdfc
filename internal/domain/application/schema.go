package application

const submissionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["jobId", "jobTitle", "companyName", "applicantName", "applicantEmail", "applicantPhone", "userId"],
  "properties": {
    "userId":           {"type": "string", "minLength": 1, "pattern": "^[^/]+$"},
    "jobId":            {"type": "string", "minLength": 1},
    "jobTitle":         {"type": "string", "minLength": 1},
    "companyName":      {"type": "string", "minLength": 1},
    "applicantName":    {"type": "string", "minLength": 1},
    "applicantEmail":   {"type": "string", "format": "email"},
    "applicantPhone":   {"type": "string", "minLength": 3},
    "previousJobTitle": {"type": ["string", "null"]},
    "linkedinUrl":      {"type": ["string", "null"]},
    "portfolioUrl":     {"type": ["string", "null"]},
    "additionalInfo":   {"type": ["string", "null"], "maxLength": 5000},
    "resume": {
      "type": ["object", "null"],
      "required": ["fileName"],
      "properties": {
        "fileName":    {"type": "string", "minLength": 1},
        "contentType": {"type": "string"},
        "sizeBytes":   {"type": "integer", "minimum": 0},
        "url":         {"type": "string"}
      }
    }
  }
}`

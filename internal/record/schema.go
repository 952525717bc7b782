package record

// Schema is the JSON Schema (Draft 2020-12) for a serialized Record.
// Enum values are the exact strings the calculators emit.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/Web-Star-Studio/daton-esg-insight-sub026/record.schema.json",
  "title": "esgcalc assessment record",
  "type": "object",
  "required": ["id", "kind", "table_version", "created_at", "input", "result"],
  "additionalProperties": false,
  "properties": {
    "id": { "type": "string", "pattern": "^[0-9A-HJKMNP-TV-Z]{26}$" },
    "kind": { "$ref": "#/$defs/Kind" },
    "table_version": { "type": "string" },
    "created_at": { "type": "string", "format": "date-time" },
    "input": { "$ref": "#/$defs/Request" },
    "result": { "$ref": "#/$defs/Response" }
  },
  "$defs": {
    "Kind": {
      "type": "string",
      "enum": ["significance", "frequency_rate", "co2e", "compare"]
    },
    "Level": {
      "type": "string",
      "enum": ["low", "medium", "high"]
    },
    "ExposureSource": {
      "anyOf": [
        { "enum": ["measured", "estimated_from_headcount", "estimated_default"] },
        { "type": "string", "pattern": "^[a-z][a-z0-9_]*$" }
      ]
    },
    "Request": {
      "type": "object",
      "required": ["kind"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "string" },
        "kind": { "$ref": "#/$defs/Kind" },
        "significance": { "$ref": "#/$defs/AssessmentInput" },
        "frequency_rate": { "$ref": "#/$defs/ExposureMetricInput" },
        "co2e": { "$ref": "#/$defs/CO2eInput" },
        "compare": { "$ref": "#/$defs/CompareInput" },
        "baseline": { "type": "number" }
      }
    },
    "AssessmentInput": {
      "type": "object",
      "required": [
        "scope", "severity", "frequency_probability",
        "has_legal_requirement", "has_stakeholder_demand", "has_strategic_option"
      ],
      "additionalProperties": false,
      "properties": {
        "scope": { "type": "string", "enum": ["local", "regional", "global"] },
        "severity": { "$ref": "#/$defs/Level" },
        "frequency_probability": { "$ref": "#/$defs/Level" },
        "has_legal_requirement": { "type": "boolean" },
        "has_stakeholder_demand": { "type": "boolean" },
        "has_strategic_option": { "type": "boolean" }
      }
    },
    "ExposureMetricInput": {
      "type": "object",
      "required": ["incident_count", "exposure_units", "exposure_source"],
      "additionalProperties": false,
      "properties": {
        "incident_count": { "type": "integer", "minimum": 0 },
        "exposure_units": { "type": "number", "exclusiveMinimum": 0 },
        "exposure_source": { "$ref": "#/$defs/ExposureSource" }
      }
    },
    "GasFactorSet": {
      "type": "object",
      "required": ["co2_factor", "ch4_factor", "n2o_factor", "direct_gwp", "direct_gwp_source"],
      "additionalProperties": false,
      "properties": {
        "co2_factor": { "type": "number", "minimum": 0 },
        "ch4_factor": { "type": "number", "minimum": 0 },
        "n2o_factor": { "type": "number", "minimum": 0 },
        "direct_gwp": { "type": ["number", "null"], "minimum": 0 },
        "direct_gwp_source": { "type": ["string", "null"] }
      }
    },
    "CO2eInput": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "factor": { "type": "string" },
        "factors": { "$ref": "#/$defs/GasFactorSet" },
        "gwp_table": { "type": "string" },
        "quantity": { "type": "number", "minimum": 0 }
      }
    },
    "CompareInput": {
      "type": "object",
      "required": ["current", "baseline", "lower_is_better"],
      "additionalProperties": false,
      "properties": {
        "current": { "type": "number" },
        "baseline": { "type": "number" },
        "lower_is_better": { "type": "boolean" }
      }
    },
    "Response": {
      "type": "object",
      "required": ["kind"],
      "additionalProperties": false,
      "properties": {
        "id": { "type": "string" },
        "kind": { "$ref": "#/$defs/Kind" },
        "table_version": { "type": "string" },
        "significance": { "$ref": "#/$defs/AssessmentResult" },
        "frequency_rate": { "$ref": "#/$defs/FrequencyRateResult" },
        "co2e": { "$ref": "#/$defs/CO2eResult" },
        "compare": { "$ref": "#/$defs/Comparison" },
        "benchmark": { "$ref": "#/$defs/Comparison" }
      }
    },
    "AssessmentResult": {
      "type": "object",
      "required": [
        "consequence_score", "frequency_probability_score", "total_score",
        "category", "significance"
      ],
      "additionalProperties": false,
      "properties": {
        "consequence_score": { "type": "integer" },
        "frequency_probability_score": { "type": "integer" },
        "total_score": { "type": "integer" },
        "category": { "type": "string", "enum": ["negligible", "moderate", "critical"] },
        "significance": { "type": "string", "enum": ["significant", "not_significant"] }
      }
    },
    "FrequencyRateResult": {
      "type": "object",
      "required": [
        "rate", "data_quality", "confidence_level", "classification",
        "exposure_source", "standard_block"
      ],
      "additionalProperties": false,
      "properties": {
        "rate": { "type": "number", "minimum": 0 },
        "data_quality": { "type": "string", "enum": ["high", "medium", "low"] },
        "confidence_level": { "type": "integer", "minimum": 0, "maximum": 100 },
        "classification": {
          "type": "string",
          "enum": ["excellent", "good", "attention", "critical"]
        },
        "exposure_source": { "$ref": "#/$defs/ExposureSource" },
        "standard_block": { "type": "number", "exclusiveMinimum": 0 }
      }
    },
    "GasContribution": {
      "type": "object",
      "required": ["gas", "label", "factor", "gwp", "contribution_co2e"],
      "additionalProperties": false,
      "properties": {
        "gas": { "type": "string" },
        "label": { "type": "string" },
        "factor": { "type": "number" },
        "gwp": { "type": "number" },
        "contribution_co2e": { "type": "number" }
      }
    },
    "CO2eResult": {
      "type": "object",
      "required": [
        "total_co2e", "formatted_total", "per_gas_breakdown",
        "methodology", "methodology_label", "ignored_per_gas_factors"
      ],
      "additionalProperties": false,
      "properties": {
        "total_co2e": { "type": "number", "minimum": 0 },
        "formatted_total": { "type": "string" },
        "per_gas_breakdown": {
          "type": "array",
          "items": { "$ref": "#/$defs/GasContribution" }
        },
        "methodology": { "type": "string", "enum": ["direct_gwp", "standard_gwp"] },
        "methodology_label": { "type": "string" },
        "gwp_table": { "type": "string" },
        "ignored_per_gas_factors": { "type": "boolean" },
        "factor": { "type": "string" },
        "unit": { "type": "string" },
        "quantity": { "type": "number", "minimum": 0 },
        "emissions_kg": { "type": "number", "minimum": 0 }
      }
    },
    "Comparison": {
      "type": "object",
      "required": [
        "current", "baseline", "delta", "percent_change",
        "direction", "is_better", "lower_is_better"
      ],
      "additionalProperties": false,
      "properties": {
        "current": { "type": "number" },
        "baseline": { "type": "number" },
        "delta": { "type": "number" },
        "percent_change": { "type": "number" },
        "direction": { "type": "string", "enum": ["improving", "worsening", "unchanged"] },
        "is_better": { "type": "boolean" },
        "lower_is_better": { "type": "boolean" }
      }
    }
  }
}`

// Package model defines the provider-agnostic abstraction for the external
// completion service StudyMesh treats as a black-box collaborator.
//
// Core goals:
//   - One synchronous Complete call per suspension point in the orchestration
//   - Normalized tool calling (ToolDefinition out, core.ToolCall back)
//   - A JSON mode for the router's higher-determinism structured decisions
//   - Lightweight scripted mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so the router, executor and synthesizer stay decoupled from
// vendor SDKs.
package model

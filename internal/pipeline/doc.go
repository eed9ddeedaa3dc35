// Package pipeline renders a fixed five-stage narrative timeline for a
// backend analysis job whose real duration is unknown.
//
// The timeline reconciles a scripted minimum dwell per stage with the real
// readiness signal from the backend: short jobs still feel thorough because
// each stage holds for its minimum time, and slow jobs never look stuck
// because the gating stage visibly keeps polling instead of freezing.
//
// Only the second stage is gated on reality; the remaining stages are
// purely cosmetic and advance on timers. Stages complete strictly in order.
package pipeline

package config

// Version is the canonical version of finsight
// This should be the single source of truth for all version references
const Version = "1.0.0"

package hithread

// Version is reported as the tracing service version.
const Version = "0.1.0"

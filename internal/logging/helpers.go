package logging

// Per-category convenience helpers. These keep call sites terse:
//
//	logging.Orchestra("Funnel %s started", id)
//	logging.GenerationDebug("rendered prompt: %d bytes", n)

// Interpreter logs an info message to the interpreter category.
func Interpreter(format string, args ...interface{}) {
	Get(CategoryInterpreter).Info(format, args...)
}

// InterpreterDebug logs a debug message to the interpreter category.
func InterpreterDebug(format string, args ...interface{}) {
	Get(CategoryInterpreter).Debug(format, args...)
}

// Generation logs an info message to the generation category.
func Generation(format string, args ...interface{}) {
	Get(CategoryGeneration).Info(format, args...)
}

// GenerationDebug logs a debug message to the generation category.
func GenerationDebug(format string, args ...interface{}) {
	Get(CategoryGeneration).Debug(format, args...)
}

// Capability logs an info message to the capability category.
func Capability(format string, args ...interface{}) {
	Get(CategoryCapability).Info(format, args...)
}

// CapabilityDebug logs a debug message to the capability category.
func CapabilityDebug(format string, args ...interface{}) {
	Get(CategoryCapability).Debug(format, args...)
}

// Orchestra logs an info message to the orchestrator category.
func Orchestra(format string, args ...interface{}) {
	Get(CategoryOrchestra).Info(format, args...)
}

// OrchestraDebug logs a debug message to the orchestrator category.
func OrchestraDebug(format string, args ...interface{}) {
	Get(CategoryOrchestra).Debug(format, args...)
}

// Funnel logs an info message to the funnel category.
func Funnel(format string, args ...interface{}) {
	Get(CategoryFunnel).Info(format, args...)
}

// FunnelDebug logs a debug message to the funnel category.
func FunnelDebug(format string, args ...interface{}) {
	Get(CategoryFunnel).Debug(format, args...)
}

// Leads logs an info message to the leads category.
func Leads(format string, args ...interface{}) {
	Get(CategoryLeads).Info(format, args...)
}

// LeadsDebug logs a debug message to the leads category.
func LeadsDebug(format string, args ...interface{}) {
	Get(CategoryLeads).Debug(format, args...)
}

// Delivery logs an info message to the delivery category.
func Delivery(format string, args ...interface{}) {
	Get(CategoryDelivery).Info(format, args...)
}

// DeliveryDebug logs a debug message to the delivery category.
func DeliveryDebug(format string, args ...interface{}) {
	Get(CategoryDelivery).Debug(format, args...)
}

// Store logs an info message to the store category.
func Store(format string, args ...interface{}) {
	Get(CategoryStore).Info(format, args...)
}

// StoreDebug logs a debug message to the store category.
func StoreDebug(format string, args ...interface{}) {
	Get(CategoryStore).Debug(format, args...)
}

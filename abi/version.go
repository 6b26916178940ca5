// Package abi adapts the proxy-wasm ABI to the process-wide dispatcher. The ProxyOn* functions
// are what the wasm exports call; they never fail toward the host.
package abi

// Version is the export a host probes for to pick the ABI version of a module.
const Version = "proxy_abi_version_0_2_1"

// ExportNames lists the functions a module built with this SDK exports.
var ExportNames = []string{
	Version,
	"proxy_on_memory_allocate",
	"proxy_on_context_create",
	"proxy_on_done",
	"proxy_on_log",
	"proxy_on_delete",
	"proxy_on_vm_start",
	"proxy_on_configure",
	"proxy_on_tick",
	"proxy_on_queue_ready",
	"proxy_on_new_connection",
	"proxy_on_downstream_data",
	"proxy_on_downstream_connection_close",
	"proxy_on_upstream_data",
	"proxy_on_upstream_connection_close",
	"proxy_on_request_headers",
	"proxy_on_request_body",
	"proxy_on_request_trailers",
	"proxy_on_response_headers",
	"proxy_on_response_body",
	"proxy_on_response_trailers",
	"proxy_on_http_call_response",
	"proxy_on_grpc_receive_initial_metadata",
	"proxy_on_grpc_receive",
	"proxy_on_grpc_receive_trailing_metadata",
	"proxy_on_grpc_close",
	"proxy_on_foreign_function",
}

// ImportNames lists the host functions, in module "env", a module built with this SDK may
// import.
var ImportNames = []string{
	"proxy_log",
	"proxy_get_log_level",
	"proxy_get_current_time_nanoseconds",
	"proxy_set_tick_period_milliseconds",
	"proxy_get_buffer_bytes",
	"proxy_set_buffer_bytes",
	"proxy_get_header_map_pairs",
	"proxy_set_header_map_pairs",
	"proxy_get_header_map_value",
	"proxy_replace_header_map_value",
	"proxy_add_header_map_value",
	"proxy_remove_header_map_value",
	"proxy_get_property",
	"proxy_set_property",
	"proxy_get_shared_data",
	"proxy_set_shared_data",
	"proxy_register_shared_queue",
	"proxy_resolve_shared_queue",
	"proxy_dequeue_shared_queue",
	"proxy_enqueue_shared_queue",
	"proxy_continue_stream",
	"proxy_close_stream",
	"proxy_send_local_response",
	"proxy_http_call",
	"proxy_grpc_call",
	"proxy_grpc_stream",
	"proxy_grpc_send",
	"proxy_grpc_cancel",
	"proxy_grpc_close",
	"proxy_get_status",
	"proxy_set_effective_context",
	"proxy_call_foreign_function",
	"proxy_done",
	"proxy_define_metric",
	"proxy_get_metric",
	"proxy_record_metric",
	"proxy_increment_metric",
}

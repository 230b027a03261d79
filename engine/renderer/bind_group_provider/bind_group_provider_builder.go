package bind_group_provider

// BindGroupProviderOption configures a BindGroupProvider in NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithGroup sets the bind group index the provider is bound to. Defaults to 0.
//
// Parameters:
//   - group: the @group index in the shader
//
// Returns:
//   - BindGroupProviderOption: a function that sets the group index
func WithGroup(group uint32) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.group = group
	}
}

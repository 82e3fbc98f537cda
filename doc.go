// Package disco is the runtime for clients generated from API discovery
// documents. Generated code declares a Method per API method and builds
// calls through Request:
//
//	res, err := disco.NewRequest(method, basePath).
//		Param("volumeId", id).
//		Authenticator(auth).
//		Do(ctx)
//
// The discogen package generates such clients from a discovery document;
// the disco command wraps it in a CLI.
package disco

/*
Package channel implements the method channel bridge shared by every transport.

A channel is a named request/response pipe. Each call names one method and
carries optional arguments; each reply is a success, an error or a
not-implemented result (see types.Result).

Handlers are registered once at startup:

	reg := channel.NewRegistry(logger, metrics)
	reg.Register(storageprovider.New(resolver, "com.example.drivy/storage"))

	result, err := reg.Invoke(ctx, "com.example.drivy/storage", types.MethodCall{
		Method: "getStoragePaths",
	})

Invoke only returns an error for transport-level problems (ErrChannelNotFound);
everything a handler decides is carried by the result.

The JSON method codec (EncodeMethodCall, DecodeEnvelope and friends) is the
wire format used by the WebSocket messenger:

	call:            {"method": "getStoragePaths", "args": null}
	success:         [["/storage/emulated/0"]]
	error:           ["UNAVAILABLE", "statfs failed", null]
	not implemented: empty payload
*/
package channel

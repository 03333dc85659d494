/*
Package ws carries method channel calls over a WebSocket, one JSON frame per
call:

	-> {"id": "1", "channel": "com.example.drivy/storage", "call": {"method": "getStoragePaths", "args": null}}
	<- {"id": "1", "envelope": [["/storage/emulated/0"]]}

A null envelope means the method is not implemented. Frames that cannot be
delivered (malformed, unknown channel) get {"id": ..., "error": "..."}.
*/
package ws

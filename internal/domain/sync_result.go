package domain

// SyncResult resultado de una sincronización best-effort.
//
// El sincronizador nunca devuelve un error de Go a quien lo invoca: la
// mutación primaria ya ocurrió y no debe bloquearse ni revertirse por un
// fallo de sincronización. Todo fallo se reduce a Synced=false con un motivo
// diagnosticable.
type SyncResult struct {
	Synced bool
	Reason string
}

// SyncOK sincronización aplicada (o nada que reconciliar).
func SyncOK() SyncResult {
	return SyncResult{Synced: true}
}

// SyncFailed sincronización no aplicada; reason explica por qué.
func SyncFailed(reason string) SyncResult {
	return SyncResult{Synced: false, Reason: reason}
}
